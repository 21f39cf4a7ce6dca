// Package models defines the core domain models for the Papa Factory kiosk.
//
// # Models
//
//   - Product: a sellable catalog entry (fries portion, chorrillana, beverage, extra)
//   - AddOn / AddOnLine: a topping and its quantity as attached to an order line
//   - OrderLine: one principal item on the active order, with add-ons and a derived subtotal
//   - Order: a finalized order as recorded in history
//   - Operator: a till operator account for the admin panel
//
// # Design principles
//
// 1. Money is int64 Chilean pesos. CLP has no subunit, so integer arithmetic is exact.
// 2. Categories are an explicit enum; nothing in the system matches on ID substrings.
// 3. Subtotals and totals are derived values; every mutation re-establishes them.
package models
