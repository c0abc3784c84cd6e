package assets

// DefaultTemplate is the starter template printed by "md2cv template".
const DefaultTemplate = "cv"

// IndexPage is the web page served at "/".
const IndexPage = "index"
