package main

// builtinQuotes is the fallback rotation used when neither a quote file nor
// a fixed quote is configured. Sources are public-domain classics.
var builtinQuotes = []string{
	"Ask, and it shall be given you; seek, and ye shall find.",
	"The unexamined life is not worth living.",
	"Well begun is half done.",
	"Know thyself.",
	"Fortune favors the bold.",
	"No man ever steps in the same river twice.",
	"The only true wisdom is in knowing you know nothing.",
	"Whatever is begun in anger ends in shame.",
	"Lost time is never found again.",
	"He that can have patience can have what he will.",
	"Brevity is the soul of wit.",
	"There is nothing either good or bad, but thinking makes it so.",
	"All that glisters is not gold.",
	"The fault, dear Brutus, is not in our stars, but in ourselves.",
}
