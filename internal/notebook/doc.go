// Package notebook decodes Jupyter notebook JSON into a normalized Document.
//
// Sources and MIME payloads stored as string arrays are joined into single strings,
// front matter in the first markdown cell is lifted into the document metadata, and
// Classify picks how a cell output should be presented.
package notebook
