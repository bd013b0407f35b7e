// Package graph defines the parsed records of a text-format TensorFlow graph.
//
// The records mirror the GraphDef, NodeDef, AttrValue and TensorProto messages
// the way a generic text-format parser hands them over: field names as keys,
// repeated fields as lists, and a repeated field that occurs once collapsed to
// a single value. Repeated[T] undoes that collapse.
//
// Parsing the text format itself is not done here. Records are read from the
// parser's output serialized as YAML or JSON:
//
//	dtype: DT_INT32
//	tensor_shape:
//	  dim:
//	    - size: 2
//	    - size: 3
//	int_val: [1, 2, 3, 4, 5, 6]
package graph
