package topics

import (
	"bufio"
	_ "embed"
	"regexp"
	"strings"
)

//go:embed stopwords.txt
var stopwordsTxt string

var wordRe = regexp.MustCompile(`[\p{L}]+(?:['-][\p{L}]+)*`)

var stopWords = func() map[string]struct{} {
	set := make(map[string]struct{})
	sc := bufio.NewScanner(strings.NewReader(stopwordsTxt))
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}()

func words(text string) []string {
	return wordRe.FindAllString(strings.ToLower(text), -1)
}

func isStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}

// contentWords returns the lowercased non-stop words of a sentence.
func contentWords(sentence string) []string {
	ws := words(sentence)
	out := ws[:0]
	for _, w := range ws {
		if !isStopWord(w) {
			out = append(out, w)
		}
	}
	return out
}
