// Package loader reads graph and tensor record documents from disk.
//
// A record document is the output of a text-format parser serialized as
// YAML or JSON. Supported encodings:
//   - YAML and JSON: decoded as YAML (JSON is a subset)
//   - JSONC (.jsonc): comments and trailing commas stripped first
//   - zstd and gzip: detected by magic bytes, regardless of extension
//
// Example:
//
//	g, err := loader.ReadGraph("frozen_model.pbtxt.json.zst")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	consts, err := decode.Constants(g)
package loader
