// Code scaffolded by goctl. Safe to edit.

package types

// ProductQuery narrows weekly and hourly breakdowns to a single product.
type ProductQuery struct {
	Product string `form:"product,optional"`
}
