package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// RoleSet is the set of roles stored on a user document.
type RoleSet []Role

func (rs RoleSet) Has(r Role) bool {
	for _, x := range rs {
		if x == r {
			return true
		}
	}
	return false
}

type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AdminID       primitive.ObjectID `bson:"adminId,omitempty" json:"adminId,omitempty"`
	Fullname      string             `bson:"fullname" json:"fullname"`
	Email         string             `bson:"email" json:"email"`
	Password      string             `bson:"password" json:"-"`
	StreetAddress string             `bson:"streetAddress" json:"streetAddress"`
	State         string             `bson:"state" json:"state"`
	City          string             `bson:"city" json:"city"`
	Number        string             `bson:"number" json:"number"`
	Roles         RoleSet            `bson:"role" json:"role"`
}
