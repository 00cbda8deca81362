// Package document turns uploaded files into the plain text that question
// generation works from. PDFs are read with github.com/ledongthuc/pdf;
// plain-text uploads pass through unchanged.
package document
