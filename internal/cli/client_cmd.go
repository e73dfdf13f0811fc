package cli

import (
	"context"
	"fmt"

	"github.com/lbarrett/tempo/internal/cli/formatter"
	"github.com/lbarrett/tempo/internal/domain"
	"github.com/spf13/cobra"
)

func newClientCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Manage the client mirror",
	}

	cmd.AddCommand(
		newClientAddCmd(app),
		newClientListCmd(app),
	)

	return cmd
}

func newClientAddCmd(app *App) *cobra.Command {
	var externalID string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := &domain.Client{Name: args[0], ExternalID: externalID}
			if err := app.Clients.Create(context.Background(), client); err != nil {
				return err
			}
			fmt.Printf("Added client %s (%s).\n", formatter.StyleBold.Render(client.Name), client.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&externalID, "external-id", "", "External workspace id")

	return cmd
}

func newClientListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			clients, err := app.Clients.List(context.Background())
			if err != nil {
				return err
			}
			if len(clients) == 0 {
				fmt.Println(formatter.StyleDim.Render("No clients."))
				return nil
			}
			for _, c := range clients {
				fmt.Printf("%s\n    %s\n", formatter.StyleBold.Render(c.Name), formatter.StyleDim.Render(c.ID))
			}
			return nil
		},
	}
}
