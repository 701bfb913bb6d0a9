package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/portfolio/cmd/portfolio/commands"
	derrors "git.home.luguber.info/inful/portfolio/internal/foundation/errors"
	"git.home.luguber.info/inful/portfolio/internal/version"
)

func main() {
	var cli commands.CLI
	parser := kong.Parse(&cli,
		kong.Name("portfolio"),
		kong.Description("Index blog posts and projects into a JSON content export."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := parser.Run(&commands.Global{Ctx: ctx}, &cli)
	stop()

	if errors.Is(err, context.Canceled) {
		err = derrors.WrapError(err, derrors.CategoryInternal, "interrupted").Warning().Build()
	}
	derrors.NewCLIErrorAdapter(cli.Verbose, nil).HandleError(err)
}
