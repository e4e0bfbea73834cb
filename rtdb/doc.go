// Package rtdb is a fluent client for the Firebase Realtime Database REST
// interface.
//
// A Client is bound to one database endpoint. Location segments and query
// modifiers accumulate on it through chained mutators, and each verb call
// composes the URL from the current state and issues exactly one HTTP
// exchange:
//
//	db, err := rtdb.New("https://dinosaur-facts.firebaseio.com/")
//	if err != nil {
//	    return err
//	}
//	body, err := db.Child("dinosaurs").OrderBy(`"height"`).LimitToFirst("2").Get(ctx)
//
// Paths and modifier values are placed in the URL verbatim. Quote string
// values yourself (OrderBy(`"$key"`)); nothing is escaped or validated.
// A '%' that does not start a valid escape, as in Child("100%"), makes the
// URL unparsable: the call fails with ErrTransport (kind "request") and
// nothing is sent. Write it as "100%25".
//
// Builder state is not synchronized. Serialize calls on one Client or take
// independent copies with Ref.
//
// Failures are *errors.AppError values that match the package sentinels with
// errors.Is:
//
//	_, err := db.Get(ctx)
//	switch {
//	case errors.Is(err, rtdb.ErrTransport):
//	    log.Printf("status %d", rtdb.StatusCode(err))
//	case errors.Is(err, rtdb.ErrBodyRead):
//	}
package rtdb
