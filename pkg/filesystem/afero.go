package filesystem

import (
	"io/fs"
	"os"
	"sort"

	"github.com/spf13/afero"
)

// Subdirectories returns the immediate subdirectories of dir, sorted by name
func Subdirectories(fsys afero.Fs, dir string) ([]fs.FileInfo, error) {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	var dirs []fs.FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry)
		}
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name() < dirs[j].Name() })
	return dirs, nil
}

// Files returns the regular files directly inside dir, sorted by name
func Files(fsys afero.Fs, dir string) ([]fs.FileInfo, error) {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	var files []fs.FileInfo
	for _, entry := range entries {
		if entry.Mode().IsRegular() {
			files = append(files, entry)
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })
	return files, nil
}

// IsDir reports whether path exists and is a directory
func IsDir(fsys afero.Fs, path string) bool {
	ok, err := afero.IsDir(fsys, path)
	return err == nil && ok
}

// FileExists reports whether path exists and is not a directory
func FileExists(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsNotExist reports whether err means the path is missing
func IsNotExist(err error) bool {
	return os.IsNotExist(err)
}
