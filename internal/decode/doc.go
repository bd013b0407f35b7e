// Package decode turns parsed TensorProto records into shaped arrays.
//
// A record carries either an explicit value list for its element type
// (int_val, float_val, bool_val) or packed bytes in tensor_content, written
// as a C-escaped string by the text format. The value list wins when it is
// non-empty. Packed bytes are unescaped, then decoded as little-endian
// elements of the declared type.
//
// Only DT_INT32, DT_FLOAT and DT_BOOL are decoded, up to rank 4:
//
//	arr, err := decode.TensorToArray(record)
//	switch {
//	case errors.Is(err, decode.ErrUnsupportedType):
//	    // string, complex, quantized ...
//	case errors.Is(err, decode.ErrUnsupportedRank):
//	    // more than 4 dimensions
//	}
package decode
