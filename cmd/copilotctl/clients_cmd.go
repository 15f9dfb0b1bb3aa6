package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/aussiebroadwan/copilot/pkg/copilotsdk"
	"github.com/aussiebroadwan/copilot/pkg/idx"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newClientsCommand(cfg *cliConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clients",
		Aliases: []string{"client"},
		Short:   "List and register clients",
	}
	cmd.AddCommand(
		newClientsListCommand(cfg),
		newClientsCreateCommand(cfg),
	)
	return cmd
}

func newClientsListCommand(cfg *cliConfig) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List every client with its service count",
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, err := cfg.jsonOutput()
			if err != nil {
				return err
			}

			clients, err := cfg.client(cmd).ListClients(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), clients)
			}
			return printClients(cmd.OutOrStdout(), clients)
		},
	}
}

func newClientsCreateCommand(cfg *cliConfig) *cobra.Command {
	var req copilotsdk.CreateClientRequest
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a client",
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, err := cfg.jsonOutput()
			if err != nil {
				return err
			}

			client, err := cfg.client(cmd).CreateClient(cmd.Context(), req)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), client)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created client %d (%s)\n", client.ID, client.Name)
			return err
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "client name")
	cmd.Flags().StringVar(&req.GSTIN, "gstin", "", "GST identification number")
	return cmd
}

func newServicesCommand(cfg *cliConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "services",
		Aliases: []string{"service", "svc"},
		Short:   "List and add the services of a client",
	}
	cmd.AddCommand(
		newServicesListCommand(cfg),
		newServicesAddCommand(cfg),
	)
	return cmd
}

func newServicesListCommand(cfg *cliConfig) *cobra.Command {
	return &cobra.Command{
		Use:     "list CLIENT_ID",
		Aliases: []string{"ls"},
		Short:   "List the services of a client",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientID, err := parseClientID(args[0])
			if err != nil {
				return err
			}
			asJSON, err := cfg.jsonOutput()
			if err != nil {
				return err
			}

			services, err := cfg.client(cmd).ListServices(cmd.Context(), clientID)
			if copilotsdk.IsNotFound(err) {
				return fmt.Errorf("client %d not found", clientID)
			}
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), services)
			}
			return printServices(cmd.OutOrStdout(), services)
		},
	}
}

func newServicesAddCommand(cfg *cliConfig) *cobra.Command {
	var req copilotsdk.AddServiceRequest
	cmd := &cobra.Command{
		Use:   "add CLIENT_ID",
		Short: "Add a service to a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientID, err := parseClientID(args[0])
			if err != nil {
				return err
			}
			asJSON, err := cfg.jsonOutput()
			if err != nil {
				return err
			}

			svc, err := cfg.client(cmd).AddService(cmd.Context(), clientID, req)
			if copilotsdk.IsNotFound(err) {
				return fmt.Errorf("client %d not found", clientID)
			}
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), svc)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added service %d (%s) to client %d\n", svc.ID, svc.Name, clientID)
			return err
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "service name")
	cmd.Flags().StringVar(&req.Status, "status", "", "service status, e.g. pending")
	cmd.Flags().StringVar(&req.Description, "description", "", "free text description")
	return cmd
}

func parseClientID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid client id %q", raw)
	}
	return id, nil
}

func printClients(w io.Writer, clients []copilotsdk.Client) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tGSTIN\tSERVICES\tCREATED")
	for _, c := range clients {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n",
			c.ID, c.Name, orDash(c.GSTIN), len(c.Services), humanize.Time(idx.TimeOf(c.ID)))
	}
	return tw.Flush()
}

func printServices(w io.Writer, services []copilotsdk.Service) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tDESCRIPTION\tADDED")
	for _, s := range services {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			s.ID, s.Name, orDash(s.Status), orDash(s.Description), humanize.Time(idx.TimeOf(s.ID)))
	}
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
