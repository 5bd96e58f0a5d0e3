// Package payload decides how a raw QR payload was encoded and turns it into
// canonical bytes.
//
// Classification is a pure function evaluated once per payload. Rules apply in
// order and the first match wins:
//   - only '0', '1' and whitespace (at least one digit): BitString
//   - canonical base64 whose decoded ASCII text is a bit-string:
//     Base64ThenBitString
//   - any other canonical base64: Base64
//   - everything else, including the empty string: RawBytes
//
// Decoding is a separate step driven by the Classification. The number of
// base64 layers that may wrap a bit-string is bounded by Decoder.MaxDepth;
// the default of one matches payloads produced by encoders that base64 a
// bit-string exactly once.
package payload
