package library

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// AddBookRequest - POST /books
type AddBookRequest struct {
	Title     string   `json:"title" binding:"required"`
	Author    string   `json:"author" binding:"required"`
	Published int      `json:"published" binding:"required"`
	Genres    []string `json:"genres"`
}

func (r AddBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(2, 0).Error("book title must have a minimum length of 2"),
		),
		validation.Field(&r.Author,
			validation.Required.Error("author is required"),
		),
		validation.Field(&r.Published,
			validation.Required.Error("published year is required"),
		),
	)
}

// EditAuthorRequest - PATCH /authors/:id
type EditAuthorRequest struct {
	SetBornTo int `json:"set_born_to" binding:"required"`
}

func (r EditAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SetBornTo,
			validation.Required.Error("set_born_to is required"),
		),
	)
}
