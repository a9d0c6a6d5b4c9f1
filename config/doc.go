// Package config loads the HCL configuration used by the server and
// the command line interface.
//
// A configuration file looks like:
//
//	listen    = ":8080"
//	log_level = "info"
//	log_file  = "/var/log/wasmgate.log"
//	cache_dir = "/var/cache/wasmgate"
//
//	module "sum" {
//	  path = "testdata/sum.wasm"
//	}
//
//	module "counter" {
//	  path = "testdata/counter.wasm"
//	}
//
// Every attribute is optional except module paths. Modules named in
// the file are loaded at startup in declaration order.
package config
