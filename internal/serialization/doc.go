// Package serialization writes decoded arrays in the SafeTensors format,
// so constants recovered from a text-format graph can be loaded by any
// SafeTensors reader.
//
//	Format Structure:
//	  [8 bytes: Header Size (uint64 LE)]
//	  [Header: JSON, tensor name -> {dtype, shape, data_offsets}]
//	  [Tensor data: little-endian element bytes, in name order]
package serialization
