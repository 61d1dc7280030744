// Package vrp holds the problem and answer records of the capacitated vehicle
// routing problem: clients, immutable instances with their distance graph,
// the instance file loader, and solution writers.
//
// Instance file format (whitespace separated, blank lines ignored):
//
//	<clients incl. depot> <vehicles> <capacity>
//	<demand> <x> <y>        ← depot, id 0
//	<demand> <x> <y>        ← customer 1
//	...
//
// Client ids are assigned by the order of non-blank client lines. The depot is
// never counted as a customer: NumCustomers == len(Clients) − 1.
//
// Solution text format:
//
//	<cost> <optimal 0|1>
//	0 c₁ c₂ … 0             ← one line per non-empty route
package vrp
