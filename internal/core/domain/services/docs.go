// Package services contains stateless domain services that operate across
// aggregates.
//
// All services here are pure: the pricing function, the price visibility
// guard, the status label guard and the leg status resolver perform no
// I/O and are safe to call concurrently at any frequency. Anything that
// needs a repository lives in the application layer instead.
package services
