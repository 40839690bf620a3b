// Package simcluster groups records by pairwise similarity, with no
// predefined categories.
//
// What it does
//
//	Builds a complete weighted graph by scoring every pair of records once,
//	then answers grouping queries over it:
//		• similar groups: connected components above a similarity threshold
//		• k groups: threshold search for a target component count
//		• representatives: the center record of each of the k largest groups
//		• even groups: k groups grown from those representatives
//
// Record similarity averages a per-field text metric over chosen fields:
// normalized Levenshtein distance (bit-parallel, UTF-16 code units) or the
// Jaccard index of sentence sets.
//
// Packages:
//
//	oracle/         similarity function contract and result checks
//	levenshtein/    edit distance and normalized similarity
//	sentence/       sentence tokenizer, Jaccard index, memoized metric
//	record/         character records and their JSON codec
//	metric/         field aggregation and metric selection
//	core/           similarity Graph, Build with progress, Subgraph
//	paths/          all-pairs shortest paths, eccentricity, center
//	components/     threshold-connected components
//	divide/         bisecting threshold search, representatives
//	nuclei/         nucleus growth and orphan balancing
//	cluster/        item-level facade over the algorithms
//	engine/         request → progress/result message stream
//	config/         YAML settings
//	cmd/simcluster  command-line interface
//
// Quick ASCII example (threshold 0.8):
//
//	kitten ─0.83─ sitten        dog ─0.67─ fog
//	     └──0.83── mitten
//
//	groups: [kitten sitten mitten] [dog] [fog]
//
//	go install github.com/katalvlaran/simcluster/cmd/simcluster@latest
package simcluster
