// Package model holds the GORM models of the shop schema.
package model

// All returns every model in migration order.
func All() []any {
	return []any{
		&UserModel{},
		&PushDeviceModel{},
		&BrandModel{},
		&CategoryModel{},
		&ProductModel{},
		&ProductVariantModel{},
		&ReviewModel{},
		&CartModel{},
		&CartItemModel{},
		&OrderModel{},
		&OrderItemModel{},
		&PaymentEventModel{},
		&CouponModel{},
		&WishlistItemModel{},
		&NewsletterSubscriberModel{},
	}
}
