// Package score rates ranked output against a lexical similarity oracle.
//
// Every output line "<base> <c1> ... <cK>" whose base word is known to the
// oracle (and, optionally, in a target list) contributes the oracle
// similarity of each known candidate. A base word counts as scored if at
// least one of its candidates was. Words are compared in lower case.
//
// # Usage
//
//	oracle, err := score.LoadPairOracleFile("wordnet-pairs.txt")
//	if err != nil {
//	    return err
//	}
//	res, err := score.NewScorer(oracle).Score(ctx, f)
//	fmt.Println(res.BaseWords, res.Mean)
package score
