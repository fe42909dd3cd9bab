package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/KhanhRomVN/GoFlow-sub001/pkg/graph"
)

// inspectCommand creates the inspect command for browsing a layout file.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [layout.json]",
		Short: "Browse a computed layout interactively",
		Long: `Browse a computed layout interactively.

The inspect command opens a terminal browser over a layout.json file
(produced by 'layout' or 'render -f json'): the top level lists file
containers with their positions, and selecting one shows the entities
inside it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read layout %s: %w", args[0], err)
			}
			l, err := graph.UnmarshalLayout(data)
			if err != nil {
				return fmt.Errorf("parse layout %s: %w", args[0], err)
			}
			if len(l.Entities) == 0 {
				printInfo("Layout is empty")
				return nil
			}

			program := tea.NewProgram(NewLayoutModel(l), tea.WithContext(cmd.Context()))
			_, err = program.Run()
			return err
		},
	}
}
