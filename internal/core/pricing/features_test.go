package pricing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/cucumber/godog"

	"github.com/rl1809/ecoscene/internal/core/domain"
)

type pricingTestContext struct {
	products map[string]*domain.Product
	cart     domain.Cart
	result   domain.PricingResult
	err      error
}

func (c *pricingTestContext) reset() {
	c.products = make(map[string]*domain.Product)
	c.cart = nil
	c.result = domain.PricingResult{}
	c.err = nil
}

func (c *pricingTestContext) anEmptyCart() error {
	c.cart = domain.Cart{}
	return nil
}

func (c *pricingTestContext) aProductPricedInWithCertifications(id string, price float64, currency string, n int) error {
	p := &domain.Product{ID: id, Price: domain.Prices{domain.Currency(currency): price}, InStock: true}
	for i := 0; i < n; i++ {
		p.Certifications = append(p.Certifications, fmt.Sprintf("cert-%d", i))
	}
	c.products[id] = p
	return nil
}

func (c *pricingTestContext) theCartHoldsOf(quantity int, id string) error {
	p, ok := c.products[id]
	if !ok {
		return fmt.Errorf("unknown product %q", id)
	}
	c.cart = append(c.cart, domain.LineItem{Product: p, Quantity: quantity})
	return nil
}

func (c *pricingTestContext) iPriceTheCartIn(currency string) error {
	c.result, c.err = ComputeTotals(c.cart, domain.Currency(currency))
	return nil
}

func expectAmount(field string, want, got float64) error {
	if math.Abs(want-got) > 1e-9 {
		return fmt.Errorf("expected %s %v, got %v", field, want, got)
	}
	return nil
}

func (c *pricingTestContext) priced() error {
	if c.err != nil {
		return fmt.Errorf("expected result but got error: %v", c.err)
	}
	return nil
}

func (c *pricingTestContext) theSubtotalIs(v float64) error {
	if err := c.priced(); err != nil {
		return err
	}
	return expectAmount("subtotal", v, c.result.Subtotal)
}

func (c *pricingTestContext) theShippingIs(v float64) error {
	if err := c.priced(); err != nil {
		return err
	}
	return expectAmount("shipping", v, c.result.Shipping)
}

func (c *pricingTestContext) theEcoDiscountIs(v float64) error {
	if err := c.priced(); err != nil {
		return err
	}
	return expectAmount("eco discount", v, c.result.EcoDiscount)
}

func (c *pricingTestContext) theTotalIs(v float64) error {
	if err := c.priced(); err != nil {
		return err
	}
	return expectAmount("total", v, c.result.Total)
}

func (c *pricingTestContext) pricingFailsWith(msg string) error {
	if c.err == nil {
		return errors.New("expected an error")
	}
	if c.result != (domain.PricingResult{}) {
		return fmt.Errorf("expected no partial result, got %+v", c.result)
	}
	for _, target := range []error{domain.ErrInvalidQuantity, domain.ErrMissingPrice} {
		if errors.Is(c.err, target) && target.Error() == msg {
			return nil
		}
	}
	return fmt.Errorf("expected %q, got %v", msg, c.err)
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &pricingTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^an empty cart$`, tc.anEmptyCart)
	ctx.Step(`^a product "([^"]*)" priced (\d+(?:\.\d+)?) in "([^"]*)" with (\d+) certifications$`, tc.aProductPricedInWithCertifications)
	ctx.Step(`^the cart holds (-?\d+) of "([^"]*)"$`, tc.theCartHoldsOf)

	// When steps
	ctx.Step(`^I price the cart in "([^"]*)"$`, tc.iPriceTheCartIn)

	// Then steps
	ctx.Step(`^the subtotal is (\d+(?:\.\d+)?)$`, tc.theSubtotalIs)
	ctx.Step(`^the shipping is (\d+(?:\.\d+)?)$`, tc.theShippingIs)
	ctx.Step(`^the eco discount is (\d+(?:\.\d+)?)$`, tc.theEcoDiscountIs)
	ctx.Step(`^the total is (\d+(?:\.\d+)?)$`, tc.theTotalIs)
	ctx.Step(`^pricing fails with "([^"]*)"$`, tc.pricingFailsWith)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
