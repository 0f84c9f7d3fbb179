/*
Package status describes what happened to each file during a rename run.

	            +-------------+
	            |   Summary   |
	            +------+------+
	                   |
	      +------------+------------+
	      |                         |
	+-----+------+          +-------+-----+
	| FileResult |          |  FileError  |
	|  (status)  |          |   (kind)    |
	+------------+          +-------------+

🎯 Purpose:
- Gives every visited file a typed outcome instead of a printed-and-forgotten error
- Classifies failures by the step that failed (walk, read, decode, write)
- Formats the exact console lines users see

⚡ Invariants:
- A failed result always carries a FileError
- FileError matches both its kind sentinel and its cause with errors.Is
*/
package status
