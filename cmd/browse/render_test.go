package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/browse"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/catalogtest"
	"github.com/light-bringer/shopcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/shopcat-service/internal/pkg/paging"
)

func TestRenderProducts(t *testing.T) {
	st := paging.State[*domain.Product]{
		Items: []*domain.Product{
			catalogtest.MustProduct("p-1", "Galaxy phone", "phones", 300),
			catalogtest.MustProduct("p-2", "ThinkPad", "laptops", 900),
		},
		CurrentPage: 1,
		PageSize:    2,
		TotalCount:  5,
		HasMore:     true,
	}

	var buf bytes.Buffer
	require.NoError(t, renderProducts(&buf, st))

	out := buf.String()
	assert.Contains(t, out, "Galaxy phone")
	assert.Contains(t, out, "900.00")
	assert.Contains(t, out, "0.0 (0)")
	assert.Contains(t, out, "page 2 of 3 (5 items, more available)")
}

func TestRenderOrders(t *testing.T) {
	st := paging.State[*domain.Order]{
		Items:      []*domain.Order{catalogtest.MustOrder("o-1", "u-1", 0)},
		PageSize:   8,
		TotalCount: 1,
	}

	var buf bytes.Buffer
	require.NoError(t, renderOrders(&buf, st))

	out := buf.String()
	assert.Contains(t, out, "o-1")
	assert.Contains(t, out, "10.00")
	assert.Contains(t, out, "page 1 of 1 (1 items)")
}

func TestRenderSelection(t *testing.T) {
	p := catalogtest.MustProduct("p-1", "Galaxy phone", "phones", 300)

	var buf bytes.Buffer
	require.NoError(t, renderSelection(&buf, &browse.Selection{Product: p, Rating: domain.Rating{Average: "4.5", Count: 2}}))
	assert.Contains(t, buf.String(), "rating: 4.5 from 2 reviews")
}

func TestRenderCategories(t *testing.T) {
	st := paging.State[string]{Items: []string{"laptops", "phones"}, TotalCount: 2}

	var buf bytes.Buffer
	require.NoError(t, renderCategories(&buf, st))
	assert.Equal(t, "laptops\nphones\n2 categories\n", buf.String())
}
