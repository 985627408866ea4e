package domain

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderShipped   OrderStatus = "Shipped"
	OrderDelivered OrderStatus = "Delivered"
)

type OrderItem struct {
	ID       string   `json:"id"`
	Product  *Product `json:"product"`
	Quantity int      `json:"quantity"`
}

type Order struct {
	ID               string      `json:"id"`
	OrderItems       []OrderItem `json:"orderItems"`
	ShippingAddress1 string      `json:"shippingAddress1"`
	ShippingAddress2 string      `json:"shippingAddress2"`
	City             string      `json:"city"`
	Zip              string      `json:"zip"`
	Country          string      `json:"country"`
	Phone            string      `json:"phone"`
	Status           OrderStatus `json:"status"`
	TotalPrice       float64     `json:"totalPrice"`
	User             *UserRef    `json:"user"`
	DateOrdered      time.Time   `json:"dateOrdered"`
}
