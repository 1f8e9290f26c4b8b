// package importer turns uploaded spreadsheets into records.
//
// Only the first worksheet is read. Its first row is the header, and the columns
// "Name", "Position" and "Level" (matched exactly) feed the record fields. A row
// without one of those columns yields an empty field rather than an error.
package importer
