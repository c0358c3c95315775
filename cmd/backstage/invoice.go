// Invoice commands manage billing, including PDF rendering.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/allmyfriends/backstage/internal/pdf"
	"github.com/allmyfriends/backstage/pkg/types"
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Manage invoices",
}

var (
	invoiceFlags       types.Invoice
	invoiceItemFlags   []string
	invoiceListArtist  string
	invoiceListProject string
	invoiceRenderOut   string
)

var invoiceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		var invoices []*types.Invoice
		switch {
		case invoiceListArtist != "":
			invoices, err = store.Invoices().ListByArtist(invoiceListArtist)
		case invoiceListProject != "":
			invoices, err = store.Invoices().ListByProject(invoiceListProject)
		default:
			invoices, err = store.Invoices().List()
		}
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(invoices)
		}
		rows := make([][]string, len(invoices))
		for i, inv := range invoices {
			rows[i] = []string{
				shortID(inv.ID),
				inv.InvoiceNumber,
				inv.Status,
				fmt.Sprintf("%.2f", inv.Amount),
				inv.DueDate,
			}
		}
		printTable([]string{"ID", "NUMBER", "STATUS", "AMOUNT", "DUE"}, rows)
		fmt.Printf("Total: %d invoice(s)\n", len(invoices))
		return nil
	},
}

var invoiceGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		invoice, err := store.Invoices().Get(args[0])
		if err != nil {
			return err
		}
		return printJSON(invoice)
	},
}

var invoiceAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an invoice for an artist",
	Example: `  backstage invoice add --artist <id> --number INV-2026-001 --amount 1200 \
    --issue 2026-05-01 --due 2026-06-01 --item "Mixing=800" --item "Mastering=400"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		in := invoiceFlags
		if len(invoiceItemFlags) > 0 {
			if in.Items, err = encodeItemFlags(invoiceItemFlags); err != nil {
				return err
			}
		}

		invoice, err := store.Invoices().Create(in)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(invoice)
		}
		fmt.Println("Created invoice", invoice.ID)
		return nil
	},
}

var invoiceUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an invoice",
	Long: `Update replaces the given fields. Setting --status paid stamps the paid
date; any other status clears it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		current, err := store.Invoices().Get(args[0])
		if err != nil {
			return err
		}
		if err := applyInvoiceFlags(cmd, current); err != nil {
			return err
		}

		invoice, err := store.Invoices().Update(args[0], *current)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(invoice)
		}
		fmt.Println("Updated invoice", invoice.ID)
		return nil
	},
}

var invoiceDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Invoices().Delete(args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted invoice", args[0])
		return nil
	},
}

var invoiceRenderCmd = &cobra.Command{
	Use:     "render <id>",
	Short:   "Render an invoice as a PDF",
	Example: `  backstage invoice render <id> --out invoice.pdf`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		invoice, err := store.Invoices().Get(args[0])
		if err != nil {
			return err
		}
		artist, err := store.Artists().Get(invoice.ArtistID)
		if err != nil {
			return err
		}

		out := invoiceRenderOut
		if out == "" {
			out = "invoice-" + invoice.InvoiceNumber + ".pdf"
		}
		if err := pdf.RenderFile(out, *invoice, *artist, pdf.DefaultOptions); err != nil {
			return fmt.Errorf("render invoice: %w", err)
		}
		fmt.Println("Rendered", out)
		return nil
	},
}

func applyInvoiceFlags(cmd *cobra.Command, inv *types.Invoice) error {
	if cmd.Flags().Changed("number") {
		inv.InvoiceNumber = invoiceFlags.InvoiceNumber
	}
	if cmd.Flags().Changed("amount") {
		inv.Amount = invoiceFlags.Amount
	}
	if cmd.Flags().Changed("status") {
		inv.Status = invoiceFlags.Status
	}
	if cmd.Flags().Changed("issue") {
		inv.IssueDate = invoiceFlags.IssueDate
	}
	if cmd.Flags().Changed("due") {
		inv.DueDate = invoiceFlags.DueDate
	}
	if cmd.Flags().Changed("bill-to") {
		inv.BillTo = invoiceFlags.BillTo
	}
	if cmd.Flags().Changed("notes") {
		inv.Notes = invoiceFlags.Notes
	}
	if cmd.Flags().Changed("item") {
		items, err := encodeItemFlags(invoiceItemFlags)
		if err != nil {
			return err
		}
		inv.Items = items
	}
	return nil
}

// encodeItemFlags parses repeated --item "description=amount" flags into
// the serialized line-items payload.
func encodeItemFlags(flags []string) (string, error) {
	items := make([]types.LineItem, 0, len(flags))
	for _, f := range flags {
		desc, amountStr, ok := strings.Cut(f, "=")
		if !ok || desc == "" {
			return "", fmt.Errorf("invalid item %q, want \"description=amount\"", f)
		}
		amount, err := strconv.ParseFloat(amountStr, 64)
		if err != nil {
			return "", fmt.Errorf("invalid item amount %q: %w", amountStr, err)
		}
		items = append(items, types.LineItem{Description: desc, Amount: amount})
	}
	return types.EncodeLineItems(items)
}

func init() {
	invoiceListCmd.Flags().StringVar(&invoiceListArtist, "artist", "", "filter by artist ID")
	invoiceListCmd.Flags().StringVar(&invoiceListProject, "project", "", "filter by project ID")

	for _, c := range []*cobra.Command{invoiceAddCmd, invoiceUpdateCmd} {
		c.Flags().StringVar(&invoiceFlags.InvoiceNumber, "number", "", "invoice number, unique")
		c.Flags().Float64Var(&invoiceFlags.Amount, "amount", 0, "total amount in dollars")
		c.Flags().StringVar(&invoiceFlags.Status, "status", "", "status (pending, paid, overdue, void)")
		c.Flags().StringVar(&invoiceFlags.IssueDate, "issue", "", "issue date (YYYY-MM-DD)")
		c.Flags().StringVar(&invoiceFlags.DueDate, "due", "", "due date (YYYY-MM-DD)")
		c.Flags().StringArrayVar(&invoiceItemFlags, "item", nil, "line item as \"description=amount\", repeatable")
		c.Flags().StringVar(&invoiceFlags.BillTo, "bill-to", "", "billing recipient block")
		c.Flags().StringVar(&invoiceFlags.Notes, "notes", "", "free-form notes")
	}
	invoiceAddCmd.Flags().StringVar(&invoiceFlags.ArtistID, "artist", "", "billed artist ID")
	invoiceAddCmd.Flags().StringVar(&invoiceFlags.ProjectID, "project", "", "related project ID")
	invoiceAddCmd.MarkFlagRequired("artist")
	invoiceAddCmd.MarkFlagRequired("number")

	invoiceRenderCmd.Flags().StringVar(&invoiceRenderOut, "out", "", "output path (default invoice-<number>.pdf)")

	invoiceCmd.AddCommand(invoiceListCmd)
	invoiceCmd.AddCommand(invoiceGetCmd)
	invoiceCmd.AddCommand(invoiceAddCmd)
	invoiceCmd.AddCommand(invoiceUpdateCmd)
	invoiceCmd.AddCommand(invoiceDeleteCmd)
	invoiceCmd.AddCommand(invoiceRenderCmd)
}
