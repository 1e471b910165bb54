// Package shop is a fixture loaded by the analyze tests.
package shop

import (
	"reflect"
	"time"
)

type Status string

// Order refers back to itself through its lines.
//
//fudge:convention camel
type Order struct {
	ID       int64 `fudge:"id"`
	Customer *Customer
	Lines    []OrderLine
	PlacedAt time.Time
	Status   Status
	Receipt  []byte
	Secret   string `fudge:"-"`
	Total    int64  `fudge:",readonly"`
	note     string
}

func (o Order) Note() string { return o.note }

type OrderLine struct {
	Sku   string `fudge:"sku_code"`
	Order *Order `fudge:",readonly"`
}

type Audit struct {
	CreatedBy string
	Name      string
}

type Contact struct {
	Email string
}

// Customer embeds Audit, whose Name is shadowed, and a nil *Contact.
type Customer struct {
	Audit
	*Contact
	Name     string
	Referrer *Customer
	Tags     List[string]
}

// List encodes as a list of T.
type List[T any] struct {
	items []T
}

func (List[T]) FudgeElem() reflect.Type { return reflect.TypeFor[T]() }

//fudge:convention upper
type Shouting []Contact

type Index struct {
	Entries map[string]int
}

type Left struct {
	Key string
}

type Right struct {
	Key string
}

// Pair promotes Key from both sides, so neither is visible.
type Pair struct {
	Left
	Right
	Value int
}

//fudge:convention kebab
type Broken struct {
	Name string
}

// Client is an alias and not a type of its own.
type Client = Customer

type handle struct {
	ID int
}
