// Package normalisers provides implementations of the TextNormaliser
// interface. A normaliser prepares raw OCR output for field extraction;
// it never interprets the text.
package normalisers
