// Package zxing adapts github.com/makiuchi-d/gozxing to the pipeline's
// extraction contract.
//
// Locating and demodulating the symbol is entirely the library's concern; this
// package only binarizes the image, runs the QR reader, and maps "no symbol"
// outcomes onto services.ErrQRNotFound so the pipeline can report them without
// knowing gozxing's exception types.
package zxing
