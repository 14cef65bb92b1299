// Package num provides the exact decimal number type used for every numeric
// value that crosses the store boundary.
//
// World documents are authored with plain JSON numbers, and the backing store
// represents numbers as decimal strings (the DynamoDB N attribute type).
// Binary floating point cannot round-trip values like 0.5 reliably through
// repeated encode cycles, so all numeric fields are carried as Decimal from
// the moment a document is decoded until the attribute is written.
//
// # Conversions
//
//   - FromAny: coerces loosely typed document values (json.Number, string,
//     integer kinds, float64) into a Decimal. Floats convert through their
//     shortest decimal representation, never their binary expansion.
//   - FromString / FromInt: explicit constructors.
//
// # Marshaling
//
// Decimal implements the attributevalue Marshaler/Unmarshaler pair, encoding
// as a number attribute carrying the literal decimal string, and JSON
// marshaling as a bare number literal so read-side output matches the
// authored document form.
package num
