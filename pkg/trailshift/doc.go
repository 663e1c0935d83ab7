// Package trailshift summarizes IAM user working hours from CloudTrail
// audit records.
//
// Quick start:
//
//	f, err := os.Open("trail.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	days, err := trailshift.Analyze(f, trailshift.WithActor("alice"))
//	if errors.Is(err, trailshift.ErrNoActivity) {
//	    fmt.Println("no activity for alice")
//	    return
//	}
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, d := range days {
//	    fmt.Println(d.Actor, d.Date, d.Start.Format("15:04:05"), d.End.Format("15:04:05"))
//	}
//
// The input may be a CloudTrail document with a top-level Records array, a
// bare JSON array of records, or either of those gzip-compressed.
package trailshift
