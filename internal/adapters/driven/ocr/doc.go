// Package ocr groups the driven.TextRecogniser adapters.
//
//   - tesseract: runs the tesseract CLI on image files
//   - textfile: reads text that was recognised elsewhere
package ocr
