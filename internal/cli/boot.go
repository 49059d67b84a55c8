package cli

import (
	"github.com/arthur-debert/modstrap/pkg/bootstrap"
	"github.com/arthur-debert/modstrap/pkg/console"
	"github.com/arthur-debert/modstrap/pkg/errors"
	"github.com/arthur-debert/modstrap/pkg/hook"
	"github.com/arthur-debert/modstrap/pkg/report"
	"github.com/arthur-debert/modstrap/pkg/runtimes"
	"github.com/spf13/cobra"
)

// detourBase is where simulated detour addresses start
const detourBase uintptr = 0xD000

func newBootCmd(g *globals) *cobra.Command {
	game := &gameFlags{}
	var (
		symbol string
		calls  int
	)

	cmd := &cobra.Command{
		Use:   "boot",
		Short: "Simulate the in-process bootstrap",
		Long: `Boot runs the attach sequence against an in-process resolver, then resolves
--symbol the way a host would. Resolving a runtime entry symbol triggers the
handoff, which discovers and loads the mods exactly once.`,
		Example: `  modstrap boot --game ~/Games/Demo/Demo.exe --symbol il2cpp_init
  modstrap boot --game ~/Games/Demo/Demo.exe --symbol glClear --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if calls < 1 {
				return errors.New(errors.ErrInvalidInput, "--calls must be at least 1")
			}

			env, err := game.environment()
			if err != nil {
				return err
			}

			detours := make(map[string]uintptr)
			for i, s := range runtimes.Symbols() {
				detours[s] = detourBase + uintptr(i)*0x10
			}

			slots := hook.NewSlots()
			slots.Set(hook.TargetSymbol, func(uintptr, string) uintptr { return 0 })

			core, err := bootstrap.Init(cmd.Context(), env, bootstrap.Options{
				Hooker:    slots,
				Detours:   detours,
				Console:   console.Nop{},
				LogWriter: cmd.ErrOrStderr(),
				Verbosity: g.verbosity,
			})
			if err != nil {
				return err
			}

			doc := report.Boot{
				Target:  hook.TargetSymbol,
				Install: hook.NotInstalled.String(),
				Runtime: hook.Waiting.String(),
			}
			for i := 0; i < calls; i++ {
				addr := slots.Call(hook.TargetSymbol, 0, symbol)
				_, redirected := detours[symbol]
				doc.Resolutions = append(doc.Resolutions, report.Resolution{
					Symbol:     symbol,
					Address:    report.Address(addr),
					Redirected: redirected && core != nil,
				})
			}

			if core != nil {
				defer func() { _ = core.Close(cmd.Context()) }()
				icpt := core.Interceptor()
				doc.Hooked = true
				doc.Install = icpt.InstallState().String()
				doc.Runtime = icpt.RuntimeState().String()
				doc.Flavor = core.Flavor()
				if regs := core.Registries(); regs != nil {
					load := report.NewLoad(regs)
					doc.Load = &load
				}
			}

			r, err := g.renderer(cmd)
			if err != nil {
				return err
			}
			return r.Boot(doc)
		},
	}
	game.register(cmd)
	cmd.Flags().StringVarP(&symbol, "symbol", "s", "il2cpp_init", "Symbol the simulated host resolves")
	cmd.Flags().IntVar(&calls, "calls", 2, "How many times the symbol is resolved")
	return cmd
}
