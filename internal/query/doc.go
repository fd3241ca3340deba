// Package query provides the YAML schema, parsing and validation of
// inspection query files.
//
// A query file names packages to load and, per type, what to report:
//
//	version: "1"
//	packages:
//	  - ./village
//	queries:
//	  - type: village.Villager
//	    markers: important        # string or list
//	    methods: true
//	    constructors: true
//	  - type: Merchant            # name-only ids pick the first match
//
// A query without markers and without any flag defaults to methods.
package query
