package cluster_test

import (
	"fmt"

	"github.com/katalvlaran/simcluster/cluster"
	"github.com/katalvlaran/simcluster/levenshtein"
)

func wordSet() *cluster.Set {
	words := []any{"kitten", "sitten", "mitten", "dog", "fog"}
	set, err := cluster.New(words, func(a, b any) float64 {
		return levenshtein.Similarity(a.(string), b.(string))
	})
	if err != nil {
		panic(err)
	}
	return set
}

func ExampleSet_SimilarGroups() {
	groups, err := wordSet().SimilarGroups(0.8)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(groups)
	// Output: [[kitten sitten mitten] [dog] [fog]]
}

func ExampleSet_Groups() {
	groups, err := wordSet().Groups(2)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(groups)
	// Output: [[kitten sitten mitten] [dog fog]]
}

func ExampleSet_EvenGroups() {
	groups, err := wordSet().EvenGroups(2)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(groups)
	// Output: [[kitten sitten mitten] [dog fog]]
}
