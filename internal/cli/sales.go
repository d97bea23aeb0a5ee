package cli

import (
	"context"
	"fmt"

	"farmacia/internal/farmacia"
	"farmacia/internal/report"
	"farmacia/internal/sales"
	"farmacia/internal/sales/service"
)

func (a *App) saleCommands(ctx context.Context, args []string) error {
	sub, args := subcommand(args)

	fs := newFlagSet("vendas " + sub)
	id := fs.Int64("id", 0, "sale or customer id")
	med := fs.Int64("med", 0, "medication id")
	qty := fs.Int("qtd", 1, "quantity")
	pos := fs.Int("pos", -1, "draft item position, from 0")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch sub {
	case "list":
		list, err := a.client.ListSales(ctx)
		if err != nil {
			return err
		}

		tw := newTable(a.out, "ID", "CLIENTE", "DATA", "ITENS", "TOTAL")
		for _, s := range list {
			row(tw, s.ID, s.Customer.Name, report.FormatDate(s.SoldAt), s.ItemCount, report.FormatBRL(s.Total))
		}
		return tw.Flush()
	case "show":
		return a.showSale(ctx, *id)
	case "clientes":
		customers, err := a.sales.EligibleCustomers(ctx)
		if err != nil {
			return err
		}

		tw := newTable(a.out, "ID", "NOME", "CPF")
		for _, c := range customers {
			row(tw, c.ID, c.Name, farmacia.FormatCPF(c.CPF))
		}
		return tw.Flush()
	case "produtos":
		meds, err := a.sales.EligibleMedications(ctx)
		if err != nil {
			return err
		}

		tw := newTable(a.out, "ID", "NOME", "PREÇO", "ESTOQUE")
		for _, m := range meds {
			row(tw, m.ID, m.Name, report.FormatBRL(m.Price), m.Quantity)
		}
		return tw.Flush()
	case "cliente":
		if *id == 0 {
			return fmt.Errorf("%w: -id", ErrMissingFlag)
		}
		if err := a.sales.SetCustomer(ctx, *id); err != nil {
			return err
		}

		return a.showDraft()
	case "add":
		if *med == 0 {
			return fmt.Errorf("%w: -med", ErrMissingFlag)
		}
		if _, err := a.sales.AddItem(ctx, *med, *qty); err != nil {
			return err
		}

		return a.showDraft()
	case "remove":
		if err := a.sales.RemoveItem(*pos); err != nil {
			return err
		}

		return a.showDraft()
	case "draft":
		return a.showDraft()
	case "discard":
		if err := a.sales.Discard(); err != nil {
			return err
		}

		fmt.Fprintln(a.out, "venda descartada")
		return nil
	case "submit":
		sale, err := a.sales.Submit(ctx)
		if err != nil {
			return &displayError{msg: service.DisplayError(err), err: err}
		}

		fmt.Fprintf(a.out, "venda %d registrada, total %s\n", sale.ID, report.FormatBRL(sale.Total))
		return nil
	default:
		return unknownSubcommand("vendas", sub)
	}
}

func (a *App) showSale(ctx context.Context, id int64) error {
	if id == 0 {
		return fmt.Errorf("%w: -id", ErrMissingFlag)
	}

	list, err := a.client.ListSales(ctx)
	if err != nil {
		return err
	}

	for _, s := range list {
		if s.ID != id {
			continue
		}

		fmt.Fprintf(a.out, "venda %d  cliente %s  data %s\n", s.ID, s.Customer.Name, report.FormatDate(s.SoldAt))
		tw := newTable(a.out, "MEDICAMENTO", "QTD", "UNITÁRIO", "SUBTOTAL")
		for _, it := range s.Items {
			row(tw, it.MedicationName, it.Quantity, report.FormatBRL(it.UnitPrice), report.FormatBRL(it.Subtotal))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "total %s\n", report.FormatBRL(s.Total))

		return nil
	}

	return fmt.Errorf("sale %d: %w", id, sales.ErrNotFound)
}

func (a *App) showDraft() error {
	d, err := a.sales.Draft()
	if err != nil {
		return err
	}

	customer := "(nenhum)"
	if d.CustomerID != nil {
		customer = fmt.Sprint(*d.CustomerID)
	}
	fmt.Fprintln(a.out, "cliente:", customer)

	tw := newTable(a.out, "POS", "MEDICAMENTO", "QTD", "UNITÁRIO")
	for i, it := range d.Items {
		row(tw, i, it.MedicationName, it.Quantity, report.FormatBRL(it.UnitPrice))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "total:", report.FormatBRL(d.Total()))

	return nil
}

func (a *App) stock(ctx context.Context, args []string) error {
	sub, args := subcommand(args)

	fs := newFlagSet("estoque " + sub)
	med := fs.Int64("med", 0, "medication id")
	kind := fs.String("tipo", string(farmacia.Inbound), "ENTRADA or SAIDA")
	qty := fs.Int("qtd", 1, "quantity")
	reason := fs.String("motivo", "", "reason")
	note := fs.String("obs", "", "note")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch sub {
	case "list":
		meds, err := a.client.ListMedications(ctx)
		if err != nil {
			return err
		}

		tw := newTable(a.out, "ID", "MEDICAMENTO", "CATEGORIA", "ESTOQUE")
		for _, m := range meds {
			row(tw, m.ID, m.Name, report.CategoryName(meds, m.ID), m.Quantity)
		}
		return tw.Flush()
	case "recentes":
		movements, err := a.client.RecentMovements(ctx)
		if err != nil {
			return err
		}
		report.SortMovements(movements)

		return a.printMovements(movements, nil)
	case "mover":
		if *med == 0 {
			return fmt.Errorf("%w: -med", ErrMissingFlag)
		}
		if *qty <= 0 {
			return sales.ErrInvalidQuantity
		}

		err := a.client.RegisterMovement(ctx, farmacia.MovementRequest{
			MedicationID: *med,
			Kind:         farmacia.MovementKind(*kind),
			Quantity:     *qty,
			Reason:       *reason,
			Note:         *note,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(a.out, "movimentação %s de %d unidade(s) registrada\n", *kind, *qty)
		return nil
	default:
		return unknownSubcommand("estoque", sub)
	}
}

func (a *App) alerts(ctx context.Context, _ []string) error {
	low, err := a.client.LowStockAlerts(ctx)
	if err != nil {
		return err
	}

	expiring, err := a.client.ExpiryAlerts(ctx)
	if err != nil {
		return err
	}

	a.printAlerts(low, expiring)

	return nil
}

func (a *App) showDashboard(ctx context.Context, _ []string) error {
	d, err := a.dashboard.Dashboard(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "vendas totais:", report.FormatBRL(d.SalesTotal))
	fmt.Fprintln(a.out, "itens com estoque baixo:", len(d.LowStock))
	fmt.Fprintln(a.out, "itens próximos da validade:", len(d.Expiring))
	fmt.Fprintln(a.out)

	tw := newTable(a.out, "DIA", "TOTAL")
	for _, day := range d.Daily {
		row(tw, day.Day.Format("02/01/2006"), report.FormatBRL(day.Total))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(a.out)

	a.printAlerts(d.LowStock, d.Expiring)
	fmt.Fprintln(a.out)

	return a.printMovements(d.Movements, d)
}

func (a *App) printAlerts(low []farmacia.StockAlert, expiring []farmacia.ExpiryAlert) {
	fmt.Fprintln(a.out, "estoque baixo:")
	if len(low) == 0 {
		fmt.Fprintln(a.out, "  nenhum item com estoque baixo")
	}
	for _, al := range low {
		fmt.Fprintf(a.out, "  %s - %d un.\n", al.MedicationName, al.CurrentQuantity)
	}

	fmt.Fprintln(a.out, "validade próxima:")
	if len(expiring) == 0 {
		fmt.Fprintln(a.out, "  nenhum item próximo da validade")
	}
	for _, al := range expiring {
		fmt.Fprintf(a.out, "  %s - vence em %s\n", al.MedicationName, report.FormatDate(al.ExpiresOn))
	}
}

// printMovements shows the category column only when the dashboard carries
// the full medication list to look it up in
func (a *App) printMovements(movements []farmacia.Movement, d *report.Dashboard) error {
	headers := []string{"DATA", "TIPO", "MEDICAMENTO", "QTD", "OBS"}
	if d != nil {
		headers = append(headers, "CATEGORIA")
	}

	tw := newTable(a.out, headers...)
	for _, m := range movements {
		cells := []interface{}{report.FormatDate(m.MovedAt), m.Kind, m.Medication.Name, m.Quantity, m.Note}
		if d != nil {
			cells = append(cells, d.MovementCategory(m))
		}
		row(tw, cells...)
	}

	return tw.Flush()
}
