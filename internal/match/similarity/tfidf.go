package similarity

import (
	"math"
	"regexp"
	"sort"
)

const maxFeatures = 500

var termTokenRe = regexp.MustCompile(`\w\w+`)

// terms returns the unigrams and adjacent-pair bigrams of text.
func terms(text string) []string {
	toks := termTokenRe.FindAllString(text, -1)
	out := make([]string, 0, 2*len(toks))
	out = append(out, toks...)
	for i := 0; i+1 < len(toks); i++ {
		out = append(out, toks[i]+" "+toks[i+1])
	}
	return out
}

func countTerms(ts []string) map[string]int {
	out := make(map[string]int, len(ts))
	for _, t := range ts {
		out[t]++
	}
	return out
}

// vocabulary keeps the limit most frequent terms across docs. Ties break
// alphabetically so the result is deterministic.
func vocabulary(docs []map[string]int, limit int) []string {
	total := make(map[string]int)
	for _, d := range docs {
		for t, n := range d {
			total[t] += n
		}
	}
	vocab := make([]string, 0, len(total))
	for t := range total {
		vocab = append(vocab, t)
	}
	sort.Slice(vocab, func(i, j int) bool {
		if total[vocab[i]] != total[vocab[j]] {
			return total[vocab[i]] > total[vocab[j]]
		}
		return vocab[i] < vocab[j]
	})
	if len(vocab) > limit {
		vocab = vocab[:limit]
	}
	return vocab
}

// TFIDFCosine fits a TF-IDF model on the two texts and returns the cosine
// similarity of their vectors. Terms are \w\w+ tokens plus bigrams, the
// vocabulary is capped at 500 terms, idf is smoothed as ln((1+n)/(1+df))+1
// and vectors are L2-normalized. Texts with no usable terms score 0.
func TFIDFCosine(a, b string) float64 {
	docs := []map[string]int{countTerms(terms(a)), countTerms(terms(b))}
	vocab := vocabulary(docs, maxFeatures)
	if len(vocab) == 0 {
		return 0
	}
	n := float64(len(docs))
	vecs := make([][]float64, len(docs))
	for i := range vecs {
		vecs[i] = make([]float64, len(vocab))
	}
	for j, term := range vocab {
		df := 0
		for _, d := range docs {
			if d[term] > 0 {
				df++
			}
		}
		idf := math.Log((1+n)/(1+float64(df))) + 1
		for i, d := range docs {
			vecs[i][j] = float64(d[term]) * idf
		}
	}
	for _, v := range vecs {
		l2normalize(v)
	}
	dot := 0.0
	for j := range vocab {
		dot += vecs[0][j] * vecs[1][j]
	}
	return clamp01(dot)
}

func l2normalize(v []float64) {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range v {
		v[i] /= norm
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
