// Package sentiment scores English restaurant reviews with a word-polarity
// lexicon.
//
// The pipeline is: normalize and tokenize, score tokens, attribute sentence
// scores to the food/service/ambiance/value categories, extract keywords and
// representative sentences, then label the intensity of the overall score.
// Every stage is a pure function of its input and the Tables it is given, so
// the same text always yields the same profile.
//
// Known limitations:
//   - No negation handling ("not good" scores as positive).
//   - No stemming; inflected forms must be listed in the lexicon.
//   - Category attribution is keyword containment, not parsing.
//
// Tables are read-only after construction and safe for concurrent use.
package sentiment
