package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleOwner        Role = "OWNER"
	RoleCashier      Role = "CASHIER"
	RoleStockManager Role = "STOCK_MANAGER"
	RoleAccountant   Role = "ACCOUNTANT"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name" binding:"required"`
	Phone     string             `bson:"phone" json:"phone" binding:"required"`
	Role      Role               `bson:"role" json:"role" binding:"required"`
	Password  string             `bson:"password,omitempty" json:"-"`
	IsActive  bool               `bson:"isactive" json:"isactive"`
	CreatedAt time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}
