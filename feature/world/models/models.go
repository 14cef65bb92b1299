package models

import (
	"errors"

	"world-manager/core/num"
)

// ErrMissingIdentity marks a record whose identifying field is absent or
// unusable. Such records can never be stored.
var ErrMissingIdentity = errors.New("record is missing its identity field")

// Room is one location in the world graph. ExitIDs and ItemIDs hold
// references into the exits and items tables; their attribute names stay
// singular for compatibility with the live tables.
type Room struct {
	RoomID      int64    `dynamodbav:"RoomID" json:"RoomID"`
	Area        string   `dynamodbav:"Area" json:"Area"`
	Title       string   `dynamodbav:"Title" json:"Title"`
	Description string   `dynamodbav:"Description" json:"Description"`
	ExitIDs     []string `dynamodbav:"ExitID,omitempty" json:"ExitID,omitempty"`
	ItemIDs     []string `dynamodbav:"ItemID,omitempty" json:"ItemID,omitempty"`
}

// Exit is a directed connection between two rooms.
type Exit struct {
	ExitID     string `dynamodbav:"ExitID" json:"ExitID"`
	RoomID     int64  `dynamodbav:"RoomID" json:"RoomID"`
	Direction  string `dynamodbav:"Direction" json:"Direction"`
	TargetRoom int64  `dynamodbav:"TargetRoom" json:"TargetRoom"`
	Visible    bool   `dynamodbav:"Visible" json:"Visible"`
}

// Archetype is a character template keyed by name.
type Archetype struct {
	ArchetypeName string                 `dynamodbav:"ArchetypeName" json:"ArchetypeName"`
	Description   string                 `dynamodbav:"Description" json:"Description"`
	Attributes    map[string]num.Decimal `dynamodbav:"Attributes" json:"Attributes"`
	Abilities     map[string]num.Decimal `dynamodbav:"Abilities" json:"Abilities"`
}

// Prototype is an authored item template. Instances are minted from it by
// the items feature; prototype ids and item ids are separate identity
// spaces and are never compared.
type Prototype struct {
	PrototypeID string                 `dynamodbav:"PrototypeID" json:"PrototypeID"`
	Name        string                 `dynamodbav:"Name" json:"Name"`
	Description string                 `dynamodbav:"Description" json:"Description"`
	Mass        num.Decimal            `dynamodbav:"Mass" json:"Mass"`
	Value       num.Decimal            `dynamodbav:"Value" json:"Value"`
	Stackable   bool                   `dynamodbav:"Stackable" json:"Stackable"`
	MaxStack    num.Decimal            `dynamodbav:"MaxStack" json:"MaxStack"`
	Wearable    bool                   `dynamodbav:"Wearable" json:"Wearable"`
	WornOn      []string               `dynamodbav:"WornOn" json:"WornOn"`
	Verbs       map[string]string      `dynamodbav:"Verbs" json:"Verbs"`
	Overrides   map[string]string      `dynamodbav:"Overrides" json:"Overrides"`
	TraitMods   map[string]num.Decimal `dynamodbav:"TraitMods" json:"TraitMods"`
	Container   bool                   `dynamodbav:"Container" json:"Container"`
	Contents    []string               `dynamodbav:"Contents" json:"Contents"`
	CanPickUp   bool                   `dynamodbav:"CanPickUp" json:"CanPickUp"`
	Metadata    map[string]string      `dynamodbav:"Metadata" json:"Metadata"`
}

// Item is one instantiated world object, minted from a prototype.
type Item struct {
	ItemID      string                 `dynamodbav:"ItemID" json:"ItemID"`
	PrototypeID string                 `dynamodbav:"PrototypeID" json:"PrototypeID"`
	Name        string                 `dynamodbav:"Name" json:"Name"`
	Description string                 `dynamodbav:"Description" json:"Description"`
	Mass        num.Decimal            `dynamodbav:"Mass" json:"Mass"`
	Value       num.Decimal            `dynamodbav:"Value" json:"Value"`
	Stackable   bool                   `dynamodbav:"Stackable" json:"Stackable"`
	MaxStack    num.Decimal            `dynamodbav:"MaxStack" json:"MaxStack"`
	Quantity    num.Decimal            `dynamodbav:"Quantity" json:"Quantity"`
	Wearable    bool                   `dynamodbav:"Wearable" json:"Wearable"`
	WornOn      []string               `dynamodbav:"WornOn" json:"WornOn"`
	Verbs       map[string]string      `dynamodbav:"Verbs" json:"Verbs"`
	Overrides   map[string]string      `dynamodbav:"Overrides" json:"Overrides"`
	TraitMods   map[string]num.Decimal `dynamodbav:"TraitMods" json:"TraitMods"`
	Container   bool                   `dynamodbav:"Container" json:"Container"`
	Contents    []string               `dynamodbav:"Contents" json:"Contents"`
	IsWorn      bool                   `dynamodbav:"IsWorn" json:"IsWorn"`
	CanPickUp   bool                   `dynamodbav:"CanPickUp" json:"CanPickUp"`
	Metadata    map[string]string      `dynamodbav:"Metadata" json:"Metadata"`
}

// WearLocations defines all possible locations where an item can be worn.
var WearLocations = []string{
	"head",
	"neck",
	"shoulders",
	"chest",
	"back",
	"arms",
	"hands",
	"waist",
	"legs",
	"feet",
	"left_finger",
	"right_finger",
	"left_wrist",
	"right_wrist",
}

// WearLocationSet is a map for quick lookup of valid wear locations.
var WearLocationSet = make(map[string]bool)

func init() {
	for _, loc := range WearLocations {
		WearLocationSet[loc] = true
	}
}
