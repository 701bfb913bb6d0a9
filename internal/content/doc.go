// Package content turns the blog and project trees on disk into records.
//
// File names follow `<NN.>?<name>[.<locale>].{md|ipynb}`. The numeric prefix only
// orders files and is dropped from slugs; a locale suffix selects which files are
// visible for the active locale. Index walks a tree and builds sorted, de-duplicated
// records; Resolver maps a single slug back to its file; BuildTree, FilterByCategory
// and Paginate derive navigation from the flat list.
package content
