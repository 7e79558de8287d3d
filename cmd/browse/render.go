package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/browse"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/shopcat-service/internal/pkg/paging"
)

func footer[T any](w io.Writer, st paging.State[T]) error {
	more := ""
	if st.HasMore {
		more = ", more available"
	}
	_, err := fmt.Fprintf(w, "page %d of %d (%d items%s)\n", st.CurrentPage+1, st.TotalPages(), st.TotalCount, more)
	return err
}

func renderProducts(w io.Writer, st paging.State[*domain.Product]) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tPRICE\tRATING")
	for _, p := range st.Items {
		r := p.Rating()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s (%d)\n", p.ID(), p.Title(), p.Category(), p.EffectivePrice().StringFixed(2), r.Average, r.Count)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return footer(w, st)
}

func renderOrders(w io.Writer, st paging.State[*domain.Order]) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSER\tSTATUS\tTOTAL\tCREATED")
	for _, o := range st.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", o.ID(), o.UserID(), o.Status(), o.TotalPrice().StringFixed(2), o.CreatedAt().Format(time.RFC3339))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return footer(w, st)
}

func renderCategories(w io.Writer, st paging.State[string]) error {
	for _, c := range st.Items {
		if _, err := fmt.Fprintln(w, c); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d categories\n", st.TotalCount)
	return err
}

func renderSelection(w io.Writer, sel *browse.Selection) error {
	p := sel.Product
	_, err := fmt.Fprintf(w, "%s  %s\ncategory: %s\nprice: %s\nrating: %s from %d reviews\n",
		p.ID(), p.Title(), p.Category(), p.EffectivePrice().StringFixed(2), sel.Rating.Average, sel.Rating.Count)
	return err
}
