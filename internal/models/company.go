package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Company struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	Name        string             `json:"name" bson:"name"`
	Address     string             `json:"address" bson:"address"`
	Website     string             `json:"website" bson:"website"`
	Description string             `json:"description" bson:"description"`
	Tel         string             `json:"tel" bson:"tel"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}

// CompanyInput is the writable subset of a company.
type CompanyInput struct {
	Name        string `json:"name" form:"name" example:"Acme Corp"`
	Address     string `json:"address" form:"address" example:"1 Main Rd, Bangkok"`
	Website     string `json:"website" form:"website" example:"https://acme.example"`
	Description string `json:"description" form:"description" example:"Widgets and more"`
	Tel         string `json:"tel" form:"tel" example:"021234567"`
}

// CompanyQuery is the parsed listing query: filter, projection, sort and page.
type CompanyQuery struct {
	Filter map[string]interface{}
	Select []string
	Sort   []string
	Page   int
	Limit  int
}

type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

type CompanyList struct {
	Success    bool       `json:"success"`
	Count      int        `json:"count"`
	Pagination Pagination `json:"pagination"`
	Data       []Company  `json:"data"`
}
