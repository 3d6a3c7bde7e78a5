// Package resilience groups the fault tolerance helpers used around the database.
//
// Subpackages:
//   - circuitbreaker: a gobreaker breaker around the transaction runner so an unreachable
//     database fails requests fast instead of piling them up
//   - retry: exponential backoff with jitter, used while waiting for the database at startup
//
// Usage Example:
//
//	txm := circuitbreaker.NewTxManager(db.NewTxManager(conn, factory), circuitbreaker.TxConfig())
//
//	err := retry.Do(ctx, retry.DBConfig(), "database ping", conn.PingContext)
package resilience
