// Package aggregates implements the domain aggregate contracts on
// GORM/Postgres. Every write runs inside an aggregate-owned
// transaction via executeWrite, which also maps infrastructure errors
// into aggregate error codes and emits operation metrics.
package aggregates
