package ai

// ExtractPrompt is the prompt template for extracting a bearing fault
// knowledge graph from one document chunk. The first placeholder receives
// the JSON schema of the expected output, the second the chunk text.
const ExtractPrompt = `
# Task Context
You are a knowledge graph construction assistant specialized in rolling bearing fault diagnosis. Your task is to extract structured bearing fault information from technical documents and organize it as knowledge graph entries.

# Detailed Task Description & Rules
Read the document fragment carefully and extract the bearing fault information it contains. Identify:
1. Bearing fault types and their attributes (name, severity)
2. Fault causes and their effects
3. How faults manifest in the measured signal
4. Characteristic frequency information
5. Diagnosis methods
6. Influencing factors

- Only extract information that is explicitly present in the text.
- Reference related records by name; leave relation lists empty when the text names no related record.
- Leave a fact category unset when the fragment contains nothing for it.

# Output Formatting
Return JSON strictly matching the following schema and nothing else. Do not add commentary or explanations:

%s

# Document Content
%s
`

// ExtractContextPrompt is appended to ExtractPrompt when a digest of the
// previous chunk's results is available. The placeholder receives the digest.
const ExtractContextPrompt = `
# Prior Context
The following facts were already extracted from the preceding part of the document (reference only, do not extract them again):
%s

Based on the prior context and the current document content, extract only new or differing information.
`
