// Package manifest extracts declared source entries from a CMake build file.
//
// The parser recognizes a single source-list block, such as
//
//	set(MAIN_SOURCES
//	    ${CMAKE_CURRENT_SOURCE_DIR}/src/main.cpp
//	)
//
// and yields every entry line inside it as a DeclaredEntry whose path is
// relative to the directory containing the build file. It is a narrow line
// scanner, not a CMake language parser.
package manifest
