package cli

import (
	"context"
	"fmt"

	"farmacia/internal/farmacia"
	"farmacia/internal/report"
)

func (a *App) categories(ctx context.Context, args []string) error {
	sub, args := subcommand(args)

	fs := newFlagSet("categorias " + sub)
	id := fs.Int64("id", 0, "category id")
	name := fs.String("nome", "", "name")
	desc := fs.String("descricao", "", "description")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch sub {
	case "list":
		cats, err := a.client.ListCategories(ctx)
		if err != nil {
			return err
		}

		tw := newTable(a.out, "ID", "NOME", "DESCRIÇÃO", "MEDICAMENTOS")
		for _, c := range cats {
			count := "-"
			if c.MedicationCount != nil {
				count = fmt.Sprint(*c.MedicationCount)
			}
			row(tw, c.ID, c.Name, c.Description, count)
		}
		return tw.Flush()
	case "create", "update":
		if *name == "" {
			return fmt.Errorf("%w: -nome", ErrMissingFlag)
		}
		in := farmacia.CategoryInput{Name: *name, Description: *desc}

		var (
			cat *farmacia.Category
			err error
		)
		if sub == "create" {
			cat, err = a.client.CreateCategory(ctx, in)
		} else {
			if *id == 0 {
				return fmt.Errorf("%w: -id", ErrMissingFlag)
			}
			cat, err = a.client.UpdateCategory(ctx, *id, in)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(a.out, "categoria %d salva\n", cat.ID)
		return nil
	case "delete":
		if *id == 0 {
			return fmt.Errorf("%w: -id", ErrMissingFlag)
		}
		if err := a.client.DeleteCategory(ctx, *id); err != nil {
			return err
		}

		fmt.Fprintf(a.out, "categoria %d excluída\n", *id)
		return nil
	default:
		return unknownSubcommand("categorias", sub)
	}
}

func (a *App) medications(ctx context.Context, args []string) error {
	sub, args := subcommand(args)

	fs := newFlagSet("medicamentos " + sub)
	id := fs.Int64("id", 0, "medication id")
	name := fs.String("nome", "", "name")
	desc := fs.String("descricao", "", "description")
	price := fs.String("preco", "", "price, e.g. 12.90")
	qty := fs.Int("quantidade", 0, "units in stock")
	expires := fs.String("validade", "", "expiry date YYYY-MM-DD")
	category := fs.Int64("categoria", 0, "category id")
	status := fs.String("status", "", "ATIVO or INATIVO")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch sub {
	case "list":
		meds, err := a.client.ListMedications(ctx)
		if err != nil {
			return err
		}

		tw := newTable(a.out, "ID", "NOME", "CATEGORIA", "PREÇO", "ESTOQUE", "VALIDADE", "STATUS")
		for _, m := range meds {
			cat := report.UnknownCategory
			if m.Category != nil {
				cat = m.Category.Name
			}
			row(tw, m.ID, m.Name, cat, report.FormatBRL(m.Price), m.Quantity, report.FormatDate(m.ExpiresOn), m.Status)
		}
		return tw.Flush()
	case "create", "update":
		if *name == "" || *price == "" || *expires == "" || *category == 0 {
			return fmt.Errorf("%w: -nome, -preco, -validade and -categoria", ErrMissingFlag)
		}
		p, err := farmacia.ParseMoney(*price)
		if err != nil || p.IsNegative() {
			return fmt.Errorf("invalid price %q", *price)
		}
		if *qty < 0 {
			return fmt.Errorf("invalid quantity %d", *qty)
		}

		in := farmacia.MedicationInput{
			Name:        *name,
			Description: *desc,
			Price:       p,
			Quantity:    *qty,
			ExpiresOn:   *expires,
			CategoryID:  *category,
			Status:      farmacia.MedicationStatus(*status),
		}

		var med *farmacia.Medication
		if sub == "create" {
			med, err = a.client.CreateMedication(ctx, in)
		} else {
			if *id == 0 {
				return fmt.Errorf("%w: -id", ErrMissingFlag)
			}
			med, err = a.client.UpdateMedication(ctx, *id, in)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(a.out, "medicamento %d salvo\n", med.ID)
		return nil
	case "delete":
		if *id == 0 {
			return fmt.Errorf("%w: -id", ErrMissingFlag)
		}
		if err := a.client.DeleteMedication(ctx, *id); err != nil {
			return err
		}

		fmt.Fprintf(a.out, "medicamento %d excluído\n", *id)
		return nil
	case "status":
		if *id == 0 || *status == "" {
			return fmt.Errorf("%w: -id and -status", ErrMissingFlag)
		}
		med, err := a.client.SetMedicationStatus(ctx, *id, farmacia.MedicationStatus(*status))
		if err != nil {
			return err
		}

		fmt.Fprintf(a.out, "medicamento %d agora %s\n", med.ID, med.Status)
		return nil
	default:
		return unknownSubcommand("medicamentos", sub)
	}
}

func (a *App) customers(ctx context.Context, args []string) error {
	sub, args := subcommand(args)

	fs := newFlagSet("clientes " + sub)
	id := fs.Int64("id", 0, "customer id")
	name := fs.String("nome", "", "name")
	cpf := fs.String("cpf", "", "CPF")
	email := fs.String("email", "", "e-mail")
	birth := fs.String("nascimento", "", "birth date YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch sub {
	case "list":
		customers, err := a.client.ListCustomers(ctx)
		if err != nil {
			return err
		}

		tw := newTable(a.out, "ID", "NOME", "CPF", "EMAIL", "NASCIMENTO", "MAIOR", "COMPRAS")
		for _, c := range customers {
			adult := "não"
			if c.IsAdult() {
				adult = "sim"
			}
			row(tw, c.ID, c.Name, farmacia.FormatCPF(c.CPF), c.Email, report.FormatDate(c.BirthDate), adult, c.TotalPurchases)
		}
		return tw.Flush()
	case "create", "update":
		if *name == "" || *cpf == "" || *email == "" || *birth == "" {
			return fmt.Errorf("%w: -nome, -cpf, -email and -nascimento", ErrMissingFlag)
		}
		in := farmacia.CustomerInput{Name: *name, CPF: *cpf, Email: *email, BirthDate: *birth}

		var (
			c   *farmacia.Customer
			err error
		)
		if sub == "create" {
			c, err = a.client.CreateCustomer(ctx, in)
		} else {
			if *id == 0 {
				return fmt.Errorf("%w: -id", ErrMissingFlag)
			}
			c, err = a.client.UpdateCustomer(ctx, *id, in)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(a.out, "cliente %d salvo\n", c.ID)
		return nil
	case "delete":
		if *id == 0 {
			return fmt.Errorf("%w: -id", ErrMissingFlag)
		}
		if err := a.client.DeleteCustomer(ctx, *id); err != nil {
			return err
		}

		fmt.Fprintf(a.out, "cliente %d excluído\n", *id)
		return nil
	default:
		return unknownSubcommand("clientes", sub)
	}
}
