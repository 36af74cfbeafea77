package crawl

// DedupeURLsWithRate exposes dedupeURLs with a chosen Bloom filter rate.
var DedupeURLsWithRate = dedupeURLs
