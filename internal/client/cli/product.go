package cli

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/agrilink/internal/client/models"
	"github.com/dmitrijs2005/agrilink/internal/client/services"
)

// List prints the products owned by the logged-in user.
func (a *App) List(ctx context.Context) error {
	ok, err := a.dashboard(ctx)
	if !ok {
		return err
	}

	owned, err := a.products.ListOwned(ctx, a.session)
	if err != nil {
		return a.fail(ctx, err)
	}

	if len(owned) == 0 {
		fmt.Fprintln(a.out, "No products yet")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tDESCRIPTION\tIMAGE")
	for _, p := range owned {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Price, oneLine(p.Description), imageLabel(p))
	}
	return tw.Flush()
}

// Add prompts for a new product and stores it.
func (a *App) Add(ctx context.Context) error {
	ok, err := a.dashboard(ctx)
	if !ok {
		return err
	}

	name, err := getSimpleText(a.reader, "Product name", a.out)
	if err != nil {
		return err
	}
	desc, err := GetMultiline(a.reader, "Description", a.out)
	if err != nil {
		return err
	}
	rawPrice, err := getSimpleText(a.reader, "Price", a.out)
	if err != nil {
		return err
	}
	imagePath, err := getSimpleText(a.reader, "Image file (empty for none)", a.out)
	if err != nil {
		return err
	}

	if name == "" || rawPrice == "" {
		a.toast(msgFillAllFields)
		return nil
	}

	price, err := strconv.ParseFloat(rawPrice, 64)
	if err != nil {
		a.toast(msgBadPrice)
		return nil
	}

	var image []byte
	if imagePath != "" {
		image, err = os.ReadFile(imagePath)
		if err != nil {
			a.toast(fmt.Sprintf("Cannot read image: %v", err))
			return nil
		}
	}

	p := services.NewProduct{Name: name, Description: desc, Price: price, Image: image}
	if _, err := a.products.Add(ctx, a.session, p); err != nil {
		return a.fail(ctx, err)
	}

	a.toast(msgProductAdded)
	return nil
}

// Delete removes one of the user's products. Only ids listed for the
// current user are accepted.
func (a *App) Delete(ctx context.Context, args []string) error {
	ok, err := a.dashboard(ctx)
	if !ok {
		return err
	}

	var id string
	if len(args) > 0 {
		id = args[0]
	} else {
		id, err = getSimpleText(a.reader, "Enter product id to delete", a.out)
		if err != nil {
			return err
		}
	}

	owned, err := a.products.ListOwned(ctx, a.session)
	if err != nil {
		return a.fail(ctx, err)
	}
	if !slices.ContainsFunc(owned, func(p models.Product) bool { return p.ID == id }) {
		a.toast(msgNotFound)
		return nil
	}

	if err := a.products.Delete(ctx, id); err != nil {
		return a.fail(ctx, err)
	}
	a.toast(msgDeleted)
	return nil
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func imageLabel(p models.Product) string {
	if p.Image == "" {
		return "-"
	}
	mediaType, _, _ := strings.Cut(strings.TrimPrefix(p.Image, "data:"), ";")
	return mediaType
}
