package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andri/asteria/pkg/generator"
	"github.com/andri/asteria/pkg/server"
)

var newGenerator = generator.New

var runProgram = func(model tea.Model, opts ...tea.ProgramOption) (tea.Model, error) {
	return tea.NewProgram(model, opts...).Run()
}

var runServer = func(ctx context.Context, srv *server.Server) error {
	return srv.Run(ctx)
}
