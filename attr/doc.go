// Package attr implements the dynamic attribute value used throughout the
// debugger framework: configuration trees, command arguments, command
// responses, and references to live services all travel as one
// self-describing Value.
//
// # Data Model
//
// Scalars: nil, bool, int, uint, float
// Buffers: string, data (raw bytes)
// Containers: list, dict (ordered, string-keyed)
// Special: ref (non-owning handle to a registered service)
//
// # Text Form
//
// Every Value has a textual configuration form that round-trips through
// Encode and Parse:
//
//	None
//	true / false
//	42  0x2A           (both integer kinds; unsigned decimal on output)
//	3.1400             (floats carry four decimal places)
//	'pclk'             (strings are single-quoted, contents unescaped)
//	(0A,FF,3C)         (data as uppercase hex bytes)
//	[1,2,3]
//	{'Name':'uart0','Irq':1}
//	{'Type':'IService','ModuleName':'uart0'}   (a service reference)
//
// Parsing a dict that carries the recognized 'Type' tag resolves its
// 'ModuleName' through a Registry and yields a ref Value bound to the live
// service.
//
// # Storage Discipline
//
// List and dict backing stores are allocated in whole 4096-byte pages and
// grow only when the element count crosses a page boundary; shrinking never
// releases storage. Removal from a list is swap-remove: the last element
// fills the hole, so order is not preserved (use Trim to delete a range in
// order).
//
// # Concurrency
//
// A Value has no internal synchronization. Encode and Parse are reentrant;
// mutation requires exclusive access, which callers serialize externally
// (or avoid by working on a Clone).
package attr
