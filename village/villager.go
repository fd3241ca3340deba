// Package village holds sample types exercised by the inspector tests and
// the CLI examples.
package village

import (
	"errors"
	"fmt"
)

// Important is the struct tag key flagging fields worth reporting.
const Important = "important"

// Tradeable is implemented by anything that can take part in a trade.
type Tradeable interface {
	Trade(item string) bool
	Cancel()
}

// Haggler extends Tradeable with price negotiation.
type Haggler interface {
	Tradeable
	Haggle(price int) int
}

// Contract tracks an open trade. It is embedded by traders.
type Contract struct {
	open bool
}

var _ fmt.Stringer = (*Contract)(nil)

// Cancel closes the contract.
func (c *Contract) Cancel() {
	c.open = false
}

func (c *Contract) String() string {
	if c.open {
		return "open"
	}

	return "closed"
}

// Villager is a resident of the village.
type Villager struct {
	Contract

	name       string `important:""`
	age        int
	profession string
}

var _ Tradeable = (*Villager)(nil)

var ErrNegativeAge = errors.New("age must not be negative")

func newVillager(name, profession string) *Villager {
	return &Villager{name: name, profession: profession}
}

// NewVillager creates a villager without a profession.
func NewVillager(name string, age int) (*Villager, error) {
	if age < 0 {
		return nil, ErrNegativeAge
	}

	return &Villager{name: name, age: age}, nil
}

// Greet introduces the villager.
func (v Villager) Greet() string {
	if v.profession == "" {
		return fmt.Sprintf("Hello, I am %s", v.name)
	}

	return fmt.Sprintf("Hello, I am %s, the %s", v.name, v.profession)
}

// Trade opens a contract for item.
func (v *Villager) Trade(item string) bool {
	if item == "" {
		return false
	}

	v.open = true
	return true
}

// Merchant trades on behalf of a villager.
type Merchant struct {
	*Villager

	Stall  string `important:"stall" json:"stall"`
	margin int    `important:"margin"`
}

var _ Haggler = (*Merchant)(nil)

// NewMerchant creates a merchant working the given stall.
func NewMerchant(v *Villager, stall string) *Merchant {
	return &Merchant{Villager: v, Stall: stall, margin: 10}
}

// Haggle returns the counter-offer for price.
func (m *Merchant) Haggle(price int) int {
	return price + price*m.margin/100
}

// Hut has no members at all.
type Hut struct{}

// NewHut creates an empty hut.
func NewHut() Hut {
	return Hut{}
}

// NewHutWithDoors creates a hut; doors are not modelled yet.
func NewHutWithDoors(doors ...string) Hut {
	return Hut{}
}
