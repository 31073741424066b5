package cli

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/stguard/internal/config"
	"github.com/vvka-141/stguard/internal/fdfind"
	"github.com/vvka-141/stguard/internal/files/scanner"
	"github.com/vvka-141/stguard/internal/locator"
	"github.com/vvka-141/stguard/internal/logging"
	"github.com/vvka-141/stguard/internal/report"
	"github.com/vvka-141/stguard/internal/services"
	"github.com/vvka-141/stguard/internal/suppress"
	"github.com/vvka-141/stguard/pkg/stguard"
)

// newSearcher builds the fd invoker. Tests replace it to avoid running fd.
var newSearcher = func(opts fdfind.Options, logger stguard.Logger) stguard.Searcher {
	return fdfind.NewInvoker(opts, logger)
}

func runAudit(cmd *cobra.Command, roots []string, flags *rootFlagValues) error {
	_ = godotenv.Load()

	out := cmd.OutOrStdout()
	styled := isStyled(out)
	logger := logging.NewConsoleLogger(out, flags.verbose, styled)

	cfg, src, err := config.DefaultResolver().Resolve(flags.configPath)
	if err != nil {
		return err
	}
	if src.Path != "" {
		logger.Verbose("using configuration %s", src.Path)
	} else {
		logger.Verbose("no configuration file found, using defaults")
	}

	rules, err := suppress.NewRuleSet(cfg.Ignore)
	if err != nil {
		return err
	}
	logger.Verbose("loaded %d ignore rule(s)", rules.Len())

	reporters := []stguard.Reporter{report.NewConsole(out, styled)}
	if flags.sarifPath != "" {
		sarifReporter, err := report.NewSARIF(flags.sarifPath)
		if err != nil {
			return err
		}
		reporters = append(reporters, sarifReporter)
	}

	auditor := services.NewAuditor(
		locator.NewLocator(newSearcher(cfg.SearchOptions(), logger), logger),
		scanner.NewScanner(logger),
		rules,
		logger,
		reporters...,
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = auditor.Run(ctx, roots)
	return err
}

// isStyled reports whether out is a terminal that accepts colors.
func isStyled(out io.Writer) bool {
	f, ok := out.(*os.File)
	return ok && logging.ColorEnabled(f)
}
