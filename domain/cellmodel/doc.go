/*
Package cellmodel defines the value types of a cell based ledger: scripts,
cells, out points and transactions.

A cell is an output record holding a capacity and a lock script. A
transaction consumes live cells (identified by their out points) and creates
new ones. None of the types here mutate in place once handed out; methods
that change a transaction or a cell return a new one.
*/
package cellmodel
