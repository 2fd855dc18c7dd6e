package semantic

import (
	"math"

	"github.com/spigell/jobmatch/internal/textnorm"
)

// LocalSimilarity is a TF-IDF cosine computed over the two texts as a
// two-document corpus. Terms are normalized and stemmed first. The result is
// in [0,1] and is 0 when either text has no words.
func LocalSimilarity(text1, text2 string) float64 {
	docs := [2][]string{textnorm.StemmedTokens(text1), textnorm.StemmedTokens(text2)}
	if len(docs[0]) == 0 || len(docs[1]) == 0 {
		return 0
	}

	df := make(map[string]int)
	counts := [2]map[string]int{}
	for i, doc := range docs {
		counts[i] = make(map[string]int, len(doc))
		for _, term := range doc {
			if counts[i][term] == 0 {
				df[term]++
			}
			counts[i][term]++
		}
	}

	weights := [2]map[string]float64{}
	for i, doc := range docs {
		weights[i] = make(map[string]float64, len(counts[i]))
		for term, n := range counts[i] {
			tf := float64(n) / float64(len(doc))
			weights[i][term] = tf * idf(len(docs), df[term])
		}
	}

	var dot, n1, n2 float64
	for term, w := range weights[0] {
		dot += w * weights[1][term]
		n1 += w * w
	}
	for _, w := range weights[1] {
		n2 += w * w
	}

	if n1 == 0 || n2 == 0 {
		return 0
	}

	return math.Max(0, math.Min(1, dot/(math.Sqrt(n1)*math.Sqrt(n2))))
}

// idf uses the smoothed form 1+ln(N/(1+df)) so that terms present in both
// documents keep a positive weight.
func idf(docs, df int) float64 {
	return 1 + math.Log(float64(docs)/float64(1+df))
}
