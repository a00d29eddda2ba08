package topics

import "math"

const maxPowerIterations = 10000

// rank scores sentences (given as content-word lists) with LexRank.
func rank(sentences [][]string, threshold, epsilon float64) []float64 {
	n := len(sentences)
	if n == 0 {
		return nil
	}

	tf := make([]map[string]float64, n)
	for i, ws := range sentences {
		tf[i] = termFrequencies(ws)
	}
	idf := inverseDocumentFrequencies(sentences)

	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
		degree := 0.0
		for j := 0; j < n; j++ {
			if cosine(tf[i], tf[j], idf) > threshold {
				matrix[i][j] = 1
				degree++
			}
		}
		if degree == 0 {
			degree = 1
		}
		for j := range matrix[i] {
			matrix[i][j] /= degree
		}
	}

	return powerMethod(matrix, epsilon)
}

func termFrequencies(ws []string) map[string]float64 {
	tf := make(map[string]float64, len(ws))
	maxTF := 0.0
	for _, w := range ws {
		tf[w]++
		if tf[w] > maxTF {
			maxTF = tf[w]
		}
	}
	for w := range tf {
		tf[w] /= maxTF
	}
	return tf
}

func inverseDocumentFrequencies(sentences [][]string) map[string]float64 {
	seenIn := make(map[string]int)
	for _, ws := range sentences {
		seen := make(map[string]struct{}, len(ws))
		for _, w := range ws {
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			seenIn[w]++
		}
	}
	n := float64(len(sentences))
	idf := make(map[string]float64, len(seenIn))
	for w, c := range seenIn {
		idf[w] = math.Log(n / (1 + float64(c)))
	}
	return idf
}

func cosine(tf1, tf2 map[string]float64, idf map[string]float64) float64 {
	var num float64
	for w, a := range tf1 {
		if b, ok := tf2[w]; ok {
			num += a * b * idf[w] * idf[w]
		}
	}
	d1 := norm(tf1, idf)
	d2 := norm(tf2, idf)
	if d1 > 0 && d2 > 0 {
		return num / (d1 * d2)
	}
	return 0
}

func norm(tf map[string]float64, idf map[string]float64) float64 {
	var sum float64
	for w, f := range tf {
		v := f * idf[w]
		sum += v * v
	}
	return math.Sqrt(sum)
}

// powerMethod iterates p = Mᵀp from the uniform vector until the step is
// below epsilon.
func powerMethod(m [][]float64, epsilon float64) []float64 {
	n := len(m)
	p := make([]float64, n)
	for i := range p {
		p[i] = 1 / float64(n)
	}
	next := make([]float64, n)
	for iter := 0; iter < maxPowerIterations; iter++ {
		for j := 0; j < n; j++ {
			var s float64
			for i := 0; i < n; i++ {
				s += m[i][j] * p[i]
			}
			next[j] = s
		}
		var delta float64
		for i := range p {
			d := next[i] - p[i]
			delta += d * d
		}
		p, next = next, p
		if math.Sqrt(delta) <= epsilon {
			break
		}
	}
	return p
}
