package agent

// =============================================================================
// SET-PIECE PROMPT TAILS
// =============================================================================
// The long-form prompts appended to the opening and cross-examination
// requests. They ask the model to expose its strategic thinking before the
// formal statement, which is what makes the saved thinking processes worth
// reading. Shorter stage prompts are built inline by the role methods.

const prosecutorOpeningPrompt = `You are presenting the prosecution's case. Show your strategic thinking process while crafting your opening statement. Format your response with clear headers and emojis:

🎯 CASE ANALYSIS:
- Core allegations
- Available evidence
- Legal elements to prove

📊 EVIDENCE MAPPING:
- Key witness testimony
- Physical evidence
- Documentary proof
- Timeline construction

⚖️ LEGAL STRATEGY:
- Applicable laws
- Burden of proof strategy
- Anticipated defenses
- Counter-arguments prepared

Then present your opening statement:
👨‍💼 PROSECUTION STATEMENT:
[Your formal opening statement here]`

const defenseOpeningPrompt = `You are the defense attorney. Craft a compelling opening statement based ONLY on the case facts provided above. Do not invent evidence or facts.

First, show your strategic thinking process. Format your response with clear headers:

1. Case Analysis:
- Analyze the prosecution's potential weaknesses based on the provided summary and evidence.
- Outline your client's core defense.
- Identify key legal standards and burdens of proof.

2. Defense Strategy:
- Formulate the main defense narrative.
- Identify which pieces of the provided evidence you will challenge or re-interpret.
- Develop an alternative explanation for the events if applicable.

3. Opening Statement Outline:
- Structure your opening: introduction, theory of the case, what the evidence will show (or fail to show), and conclusion.

Then, present your formal opening statement:

Defense Opening Statement:
[Your formal opening statement here, strictly adhering to the provided case facts and evidence list.]`

const defenseCrossPrompt = `You are the defense attorney cross-examining the prosecution's evidence. Your goal is to undermine its weight or turn it to your advantage, based ONLY on the case facts provided above.

First, show your strategic thinking process:

1. Evidence Analysis:
- Identify inconsistencies, gaps, or alternative explanations.
- Assess the reliability of the evidence and how it was obtained.

2. Cross-Examination Objectives:
- Define the key points you need to challenge.
- Formulate questions that create doubt about the prosecution's narrative.

3. Questioning Strategy:
- Outline the sequence of your questions.
- Prepare specific, leading questions to control the narrative.

Then, present your cross-examination:

Cross-Examination:
[Your formal questioning here. Be strategic and focused on your objectives.]`

const judgeOpeningPrompt = `You are presiding as a judge in this case. Show your judicial thinking process while managing the court proceedings. Format your response with clear headers and emojis:

🎯 OBJECTIVE ANALYSIS:
- What are the key legal issues?
- What evidence needs to be examined?
- What procedural rules apply?

⚖️ JUDICIAL CONSIDERATIONS:
- Relevant legal principles
- Potential precedents
- Procedural fairness requirements

📋 COURT MANAGEMENT:
- How to maintain order
- Ensuring fair hearing for both sides
- Managing time and proceedings efficiently

Then provide your actual court statement starting with:
🧑‍⚖️ COURT STATEMENT:
[Your formal court statement here]`
